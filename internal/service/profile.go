package service

import (
	"context"
	"fmt"

	"github.com/finchwork/finch/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// GetProfile retrieves a user's public profile by username
func (s *socialService) GetProfile(username string) (*models.User, error) {
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		return nil, wrapUserLookup(err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's own profile.
// A password change requires both the current and the new password; image
// payloads replace the existing media-host asset (old asset deleted first,
// then the new payload uploaded).
func (s *socialService) UpdateProfile(ctx context.Context, userID uint, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, wrapUserLookup(err)
	}

	if (req.CurrentPassword == "") != (req.NewPassword == "") {
		return nil, fmt.Errorf("%w: please provide both current and new password", ErrInvalidArgument)
	}
	if req.CurrentPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
			return nil, fmt.Errorf("%w: current password is incorrect", ErrInvalidArgument)
		}
		if len(req.NewPassword) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidArgument, minPasswordLength)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if req.ProfileImage != "" {
		url, err := s.replaceMedia(ctx, user.ProfileImageURL, req.ProfileImage)
		if err != nil {
			return nil, err
		}
		user.ProfileImageURL = url
	}
	if req.CoverImage != "" {
		url, err := s.replaceMedia(ctx, user.CoverImageURL, req.CoverImage)
		if err != nil {
			return nil, err
		}
		user.CoverImageURL = url
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}

	if err := s.userRepository.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *socialService) replaceMedia(ctx context.Context, oldURL, payload string) (string, error) {
	if oldURL != "" {
		if err := s.deleteMedia(ctx, oldURL); err != nil {
			return "", err
		}
	}
	return s.uploadMedia(ctx, payload)
}
