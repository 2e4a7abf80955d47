package service

import (
	"context"
	"fmt"

	"github.com/MehdiShad/CardexPro/internal/domain"
)

// userFieldAccessor pairs a getter and setter for one updatable user
// field. The field set is fixed at compile time; there is no
// reflection anywhere in the update path.
type userFieldAccessor struct {
	get func(*domain.User) any
	set func(*domain.User, any) error
}

func stringSetter(assign func(*domain.User, string)) func(*domain.User, any) error {
	return func(u *domain.User, v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: expected a string value", domain.ErrInvalidInput)
		}
		assign(u, s)
		return nil
	}
}

var userFieldAccessors = map[string]userFieldAccessor{
	"email": {
		get: func(u *domain.User) any { return u.Email },
		set: stringSetter(func(u *domain.User, s string) { u.Email = s }),
	},
	"first_name": {
		get: func(u *domain.User) any { return u.FirstName },
		set: stringSetter(func(u *domain.User, s string) { u.FirstName = s }),
	},
	"last_name": {
		get: func(u *domain.User) any { return u.LastName },
		set: stringSetter(func(u *domain.User, s string) { u.LastName = s }),
	},
}

// UpdateUser is a generic partial-update service meant to be reused by
// local update flows.
//
// For each name in fields, the matching value in data is applied only
// when it is present and differs from the current value. Absence means
// "leave the field alone", not "clear it". When at least one field
// changed, the whole user is validated and only the changed columns
// are written. When nothing changed, no write happens at all.
//
// It returns the user and whether an update was performed.
func UpdateUser(ctx context.Context, users domain.UserRepository, user *domain.User, fields []string, data map[string]any) (*domain.User, bool, error) {
	hasUpdated := false
	var staged []string

	for _, field := range fields {
		accessor, ok := userFieldAccessors[field]
		if !ok {
			return nil, false, fmt.Errorf("%w: field %q is not updatable", domain.ErrInvalidInput, field)
		}

		// Skip if the field is not present in the actual data.
		value, present := data[field]
		if !present {
			continue
		}

		if accessor.get(user) == value {
			continue
		}
		if err := accessor.set(user, value); err != nil {
			return nil, false, err
		}
		staged = append(staged, field)
		hasUpdated = true
	}

	// Perform an update only if any of the fields actually changed.
	if !hasUpdated {
		return user, false, nil
	}

	if err := user.Validate(); err != nil {
		return nil, false, err
	}

	if err := users.UpdateFields(ctx, user, staged); err != nil {
		return nil, false, fmt.Errorf("update user fields: %w", err)
	}

	return user, true, nil
}
