package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marinv/contractor-pm/config"
)

func TestRunRender_ArgumentCount(t *testing.T) {
	err := runRender(context.Background(), &config.Config{}, []string{"u1", "prj-00001-0001", "pdf"})
	assert.ErrorContains(t, err, "render needs 4 arguments, got 3")
}
