// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/navaadmin/internal/core/content"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from content.Status
		to   content.Status
		want bool
	}{
		{content.StatusDraft, content.StatusSubmitted, true},
		{content.StatusSubmitted, content.StatusUnderReview, true},
		{content.StatusUnderReview, content.StatusApproved, true},
		{content.StatusUnderReview, content.StatusRejected, true},
		{content.StatusRejected, content.StatusDraft, true},
		{content.StatusApproved, content.StatusUnderReview, true},
		{content.StatusDraft, content.StatusApproved, false},
		{content.StatusSubmitted, content.StatusApproved, false},
		{content.StatusApproved, content.StatusRejected, false},
		{content.StatusRejected, content.StatusApproved, false},
		{content.Status("archived"), content.StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, content.CanTransition(tt.from, tt.to))
		})
	}
}

func TestNextStatuses_ReturnsCopy(t *testing.T) {
	next := content.NextStatuses(content.StatusUnderReview)
	next[0] = content.StatusDraft

	assert.Equal(t, []content.Status{content.StatusApproved, content.StatusRejected}, content.NextStatuses(content.StatusUnderReview))
}
