package common

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

type Logger interface {
	Log(message string)
}

type fileLogger struct {
	mutex      sync.Mutex
	path       string
	fileWriter *bufio.Writer
}

// NewFileLogger logs to the file specified by `path`. If the file is unavailable, writes to the console.
// Safe for concurrent use: the web front end logs from many request goroutines.
func NewFileLogger(path string) Logger {
	return &fileLogger{
		path: path,
	}
}

func (f *fileLogger) Log(message string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	message = formatLogLine(message)
	if f.fileWriterReady() {
		_, err := f.fileWriter.WriteString(message)
		if err != nil {
			f.logErrorToConsole(err.Error())
			f.logMessageToConsole(message)
		}
		err = f.fileWriter.Flush()
		if err != nil {
			f.logErrorToConsole(message)
		}
	} else {
		f.logMessageToConsole(message)
	}
}

func (f *fileLogger) logErrorToConsole(message string) {
	fmt.Printf("Error: %s. Logging switched to console.\n", message)
}

func (f *fileLogger) logMessageToConsole(message string) {
	fmt.Print(message)
}

func (f *fileLogger) fileWriterReady() bool {
	if f.fileWriter != nil {
		return true
	}
	if f.path == "" {
		return false
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		f.logErrorToConsole(err.Error())
		f.path = "" // don't retry on every message
		return false
	}
	f.fileWriter = bufio.NewWriter(file)
	return true
}

type consoleLogger struct{}

// NewConsoleLogger writes every message to stdout.
func NewConsoleLogger() Logger {
	return consoleLogger{}
}

func (consoleLogger) Log(message string) {
	fmt.Print(formatLogLine(message))
}

func formatLogLine(message string) string {
	if !strings.HasSuffix(message, "\n") {
		message += "\n"
	}
	return time.Now().Format(time.RFC3339) + " " + message
}
