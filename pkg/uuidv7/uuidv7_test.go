// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuidv7_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/navaadmin/pkg/uuidv7"
)

func TestNew_IsVersion7(t *testing.T) {
	parsed, err := uuid.Parse(uuidv7.New())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestNew_Ordered(t *testing.T) {
	first := uuidv7.New()
	second := uuidv7.New()
	assert.NotEqual(t, first, second)
	assert.True(t, uuidv7.Valid(first))
	assert.False(t, uuidv7.Valid("not-a-uuid"))
}
