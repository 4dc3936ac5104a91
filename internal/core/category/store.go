// Copyright (c) 2026 Nava. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import "context"

// Repository persists categories of one [Kind].
type Repository interface {
	List(context context.Context, filter Filter) ([]*Category, error)
	Get(context context.Context, id string) (*Category, error)

	// Create appends the category after the current last sort_order.
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error
	SetActive(context context.Context, id string, active bool) error

	// Reorder sets sort_order to the position of each id (1-based).
	Reorder(context context.Context, ids []string) error
	Delete(context context.Context, id string) error
}
