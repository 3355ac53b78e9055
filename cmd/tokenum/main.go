package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/tokenum/internal/cli"
	"github.com/temirov/tokenum/internal/utils"
)

// main is the entry point for the tokenum command.
func main() {
	logLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(logLevel)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer func() {
		_ = loggerInstance.Sync()
	}()
	applicationExecutionError := cli.Execute(cli.Environment{
		Logger:   loggerInstance,
		LogLevel: &logLevel,
	})
	if applicationExecutionError != nil {
		loggerInstance.Fatal(applicationExecutionError.Error())
	}
}
