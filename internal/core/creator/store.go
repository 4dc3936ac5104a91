// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

import "context"

// Repository defines the data access contract for creators.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Creator, int, error)
	Get(context context.Context, id string) (*Creator, error)
	Create(context context.Context, creator *Creator) error
	Update(context context.Context, creator *Creator) error
	SetAvatar(context context.Context, id string, avatarURL *string) error
	Delete(context context.Context, id string) error
}
