package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sokinpui/anew"
)

func main() {
	if err := anew.Execute(); err != nil {
		fmt.Fprint(os.Stderr, describe(err))
		os.Exit(1)
	}
}

func describe(err error) string {
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	var sysErr *os.SyscallError
	if errors.As(err, &pathErr) || errors.As(err, &linkErr) || errors.As(err, &sysErr) {
		return fmt.Sprintf("io error:\n%v\n", err)
	}
	return fmt.Sprintf("Error: %v\n", err)
}
