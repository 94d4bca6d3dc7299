package user

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pena.web.id/penablog/internal/entity"
	userDto "pena.web.id/penablog/internal/modules/user/dto"
	userRepo "pena.web.id/penablog/internal/modules/user/repository"
	"pena.web.id/penablog/pkg/apperror"
	"pena.web.id/penablog/pkg/editor"
	"pena.web.id/penablog/pkg/password"
	"pena.web.id/penablog/pkg/storage"
	"pena.web.id/penablog/pkg/token"
)

type UserService interface {
	Signup(ctx context.Context, req userDto.SignupRequest) (*userDto.UserResponse, error)
	Login(ctx context.Context, req userDto.LoginRequest) (*userDto.UserResponse, string, error)
	Me(ctx context.Context, userID uuid.UUID) (*userDto.UserResponse, error)
	UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error
	UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarBase64 string) (*string, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverBase64 string) (*string, error)
	UpdateBio(ctx context.Context, userID uuid.UUID, bio *string) error
	UpdateNationality(ctx context.Context, userID uuid.UUID, nationality *string) error
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) error
	UpdateSocials(ctx context.Context, userID uuid.UUID, socials []entity.SocialLink) error
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	UpdateSettings(ctx context.Context, userID uuid.UUID, req userDto.UpdateSettingsRequest) (*userDto.SettingsResponse, error)
}

type userService struct {
	repo         userRepo.UserRepository
	imageStorage storage.ImageStorage
}

func NewUserService(repo userRepo.UserRepository, imageStorage storage.ImageStorage) UserService {
	return &userService{repo: repo, imageStorage: imageStorage}
}

func (s *userService) Signup(ctx context.Context, req userDto.SignupRequest) (*userDto.UserResponse, error) {
	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Active:       true,
		Profile:      &entity.Profile{DisplayName: req.DisplayName},
		Settings:     &entity.Settings{Theme: "system", FontSize: "medium", LineHeight: "normal", Notifications: true},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.Conflict("username or email already in use")
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Login(ctx context.Context, req userDto.LoginRequest) (*userDto.UserResponse, string, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password so accounts cannot be enumerated
			return nil, "", apperror.Forbidden("invalid username or password")
		}
		return nil, "", err
	}

	if err := password.Compare(req.Password, user.PasswordHash); err != nil {
		return nil, "", err
	}

	signed, err := token.Sign(user.ID, token.RoleUser, token.UserTTL)
	if err != nil {
		return nil, "", err
	}

	resp := toUserResponse(user)
	return &resp, signed, nil
}

// Me restores the session's account view from the token alone.
func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*userDto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "user not found")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateEmail rejects only when the email belongs to a different user, so
// re-submitting an unchanged email is a no-op rather than a conflict.
func (s *userService) UpdateEmail(ctx context.Context, userID uuid.UUID, email string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != userID {
		return apperror.Conflict("email already in use")
	}
	return s.repo.UpdateEmail(ctx, userID, email)
}

func (s *userService) UpdateUsername(ctx context.Context, userID uuid.UUID, username string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil && existing.ID != userID {
		return apperror.Conflict("username already in use")
	}
	return s.repo.UpdateUsername(ctx, userID, username)
}

func (s *userService) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarBase64 string) (*string, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "profile not found")
	}

	// Reuse the existing storage path so the old asset is overwritten
	// instead of orphaned.
	publicID := ""
	if profile.AvatarPath != nil {
		publicID = *profile.AvatarPath
	}

	upload, err := s.imageStorage.UploadBase64(ctx, avatarBase64, "avatars", publicID)
	if err != nil {
		return nil, err
	}

	patch := userRepo.ProfilePatch{AvatarURL: &upload.URL, AvatarPath: &upload.Path}
	if err := s.repo.UpdateProfile(ctx, userID, patch); err != nil {
		return nil, err
	}
	return &upload.URL, nil
}

func (s *userService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverBase64 string) (*string, error) {
	upload, err := s.imageStorage.UploadBase64(ctx, coverBase64, "covers", "")
	if err != nil {
		return nil, err
	}

	patch := userRepo.ProfilePatch{CoverImageURL: &upload.URL, CoverImagePath: &upload.Path}
	if err := s.repo.UpdateProfile(ctx, userID, patch); err != nil {
		return nil, err
	}
	return &upload.URL, nil
}

func (s *userService) UpdateBio(ctx context.Context, userID uuid.UUID, bio *string) error {
	patch := userRepo.ProfilePatch{}
	if bio == nil || *bio == "" {
		patch.ClearBio = true
	} else {
		clean := editor.SanitizeText(*bio)
		patch.Bio = &clean
	}
	return s.repo.UpdateProfile(ctx, userID, patch)
}

func (s *userService) UpdateNationality(ctx context.Context, userID uuid.UUID, nationality *string) error {
	patch := userRepo.ProfilePatch{}
	if nationality == nil {
		patch.ClearNationality = true
	} else {
		canonical, ok := lookupCountry(*nationality)
		if !ok {
			return apperror.BadRequest("invalid country: " + *nationality)
		}
		patch.Nationality = &canonical
	}
	return s.repo.UpdateProfile(ctx, userID, patch)
}

func (s *userService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) error {
	return s.repo.UpdateProfile(ctx, userID, userRepo.ProfilePatch{DisplayName: &displayName})
}

func (s *userService) UpdateSocials(ctx context.Context, userID uuid.UUID, socials []entity.SocialLink) error {
	raw, err := json.Marshal(socials)
	if err != nil {
		return err
	}
	return s.repo.UpdateProfile(ctx, userID, userRepo.ProfilePatch{Socials: datatypes.JSON(raw)})
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return apperror.FromDB(err, "user not found")
	}

	if err := password.Compare(current, user.PasswordHash); err != nil {
		return apperror.Forbidden("current password is incorrect")
	}

	hashed, err := password.Hash(next)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, userID, hashed)
}

func (s *userService) UpdateSettings(ctx context.Context, userID uuid.UUID, req userDto.UpdateSettingsRequest) (*userDto.SettingsResponse, error) {
	patch := userRepo.SettingsPatch{Theme: req.Theme, FontSize: req.FontSize, LineHeight: req.LineHeight}
	if err := s.repo.UpdateSettings(ctx, userID, patch); err != nil {
		return nil, err
	}

	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, apperror.FromDB(err, "settings not found")
	}
	return &userDto.SettingsResponse{
		Theme:         settings.Theme,
		FontSize:      settings.FontSize,
		LineHeight:    settings.LineHeight,
		Notifications: settings.Notifications,
	}, nil
}

func toUserResponse(user *entity.User) userDto.UserResponse {
	resp := userDto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Active:    user.Active,
		Suspended: user.Suspended,
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		resp.Profile = &userDto.ProfileResponse{
			DisplayName:   user.Profile.DisplayName,
			AvatarURL:     user.Profile.AvatarURL,
			CoverImageURL: user.Profile.CoverImageURL,
			Bio:           user.Profile.Bio,
			Nationality:   user.Profile.Nationality,
			Socials:       decodeSocials(user.Profile.Socials),
		}
	}
	if user.Settings != nil {
		resp.Settings = &userDto.SettingsResponse{
			Theme:         user.Settings.Theme,
			FontSize:      user.Settings.FontSize,
			LineHeight:    user.Settings.LineHeight,
			Notifications: user.Settings.Notifications,
		}
	}
	return resp
}

func decodeSocials(raw datatypes.JSON) []entity.SocialLink {
	if len(raw) == 0 {
		return nil
	}
	var socials []entity.SocialLink
	if err := json.Unmarshal(raw, &socials); err != nil {
		return nil
	}
	return socials
}
