// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/navaadmin/pkg/slug"
)

func TestFrom_Latin(t *testing.T) {
	assert.Equal(t, "history-and-culture", slug.From("History & Culture"))
	assert.Equal(t, "chapter-12", slug.From("Chapter ۱۲"))
}

func TestFrom_Persian(t *testing.T) {
	result := slug.From("کتاب صوتی")
	assert.NotEmpty(t, result)
	assert.Regexp(t, `^[a-z0-9-]+$`, result)
}

func TestPrefer(t *testing.T) {
	assert.Equal(t, "novels", slug.Prefer("", "  ", "Novels", "رمان"))
	assert.Equal(t, "", slug.Prefer("", "!!!"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "novels-2", slug.WithSuffix("novels", "2"))
	assert.Equal(t, "2", slug.WithSuffix("", "2"))
}
