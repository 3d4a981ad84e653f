package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/dfacheck"
	"github.com/aretw0/dfacheck/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const onlyZ = `
name: only-z
alphabet: [a, k, z]
states: [start, done, sink]
start: start
accepting: [done]
transitions:
  - start z done
  - start a sink
  - start k sink
  - {from: done, on: a, to: sink}
  - {from: done, on: k, to: sink}
  - {from: done, on: z, to: sink}
  - sink a sink
  - sink k sink
  - sink z sink
`

func TestHandleCheck(t *testing.T) {
	s := NewServer(dfacheck.New())
	ctx := context.Background()

	res, err := s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Machine: onlyZ, Format: "yaml", Word: "z"})
	require.NoError(t, err)
	assert.Equal(t, "yes", res.Answer)
	assert.Equal(t, "done", res.FinalState)

	res, err = s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Machine: onlyZ, Format: "yaml", Word: "zz"})
	require.NoError(t, err)
	assert.Equal(t, "no", res.Answer)

	res, err = s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Machine: onlyZ, Format: "yaml", Word: "zb"})
	require.NoError(t, err)
	assert.Equal(t, "no", res.Answer)
	assert.Equal(t, domain.KindOutOfAlphabet, res.ErrorKind)

	_, err = s.handleCheck(ctx, mcp.CallToolRequest{}, CheckArgs{Machine: onlyZ, Format: "toml", Word: "z"})
	assert.Error(t, err)
}

func TestHandleValidate(t *testing.T) {
	s := NewServer(dfacheck.New())
	ctx := context.Background()

	res, err := s.handleValidate(ctx, mcp.CallToolRequest{}, ValidateArgs{Machine: onlyZ, Format: "yaml"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "akz", res.Report.Alphabet)

	res, err = s.handleValidate(ctx, mcp.CallToolRequest{}, ValidateArgs{Machine: "1 2 0 0\n0 a 1\n0 a 0\n"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, domain.KindNonDeterministic, res.ErrorKind)
	// 0/a doubled, 1/a missing
	assert.Len(t, res.Errors, 2)
}
