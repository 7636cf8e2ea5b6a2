package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/sokinpui/anew"
	"github.com/stretchr/testify/assert"
)

func TestDescribe_IOError(t *testing.T) {
	_, err := os.Open("/definitely/not/here")
	got := describe(fmt.Errorf("copy: %w", err))
	assert.Contains(t, got, "io error:\n")
	assert.Contains(t, got, "/definitely/not/here")
}

func TestDescribe_OtherError(t *testing.T) {
	got := describe(fmt.Errorf("%w: ghost", anew.ErrTemplateNotFound))
	assert.Equal(t, "Error: template does not exist: ghost\n", got)
}

func TestDescribe_LinkError(t *testing.T) {
	err := &os.LinkError{Op: "symlink", Old: "a", New: "b", Err: errors.New("file exists")}
	assert.Contains(t, describe(err), "io error:")
}
