package service

import (
	"KLPoster/internal/api/config"
	"KLPoster/internal/api/dto"
	"KLPoster/internal/model"
	"KLPoster/internal/pkg/consts"
	"KLPoster/internal/pkg/discord"
	"KLPoster/internal/pkg/redis"
	"KLPoster/internal/pkg/security"
	"KLPoster/internal/repository"
	"context"
	"errors"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

// LoginResult bundles the issued JWT with the user profile.
type LoginResult struct {
	Token string       `json:"token"`
	User  *dto.UserDTO `json:"user"`
}

type UserService interface {
	LoginWithDiscord(ctx context.Context, accessToken string) (*LoginResult, error)
	Logout(ctx context.Context, tokenString string) error
	GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type userServiceImpl struct {
	userRepo   repository.UserRepo
	identity   *discord.IdentityClient
	discordCfg config.DiscordConfig
	useRedis   bool
}

func NewUserService(userRepo repository.UserRepo, identity *discord.IdentityClient, discordCfg config.DiscordConfig, useRedis bool) UserService {
	return &userServiceImpl{
		userRepo:   userRepo,
		identity:   identity,
		discordCfg: discordCfg,
		useRedis:   useRedis,
	}
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	var userDTO dto.UserDTO
	if err := copier.Copy(&userDTO, user); err != nil {
		return nil, err
	}
	return &userDTO, nil
}

// LoginWithDiscord introspects the supplied Discord access token, enforces
// membership in the configured guild, upserts the user record and issues
// a session JWT.
func (s *userServiceImpl) LoginWithDiscord(ctx context.Context, accessToken string) (*LoginResult, error) {
	identity, err := s.identity.FetchIdentity(ctx, accessToken)
	if err != nil {
		if errors.Is(err, discord.ErrUnauthorized) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	guilds, err := s.identity.FetchGuilds(ctx, accessToken)
	if err != nil {
		if errors.Is(err, discord.ErrUnauthorized) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	guildIDs := make([]string, 0, len(guilds))
	member := false
	for _, guild := range guilds {
		guildIDs = append(guildIDs, guild.ID)
		if guild.ID == s.discordCfg.GuildID {
			member = true
		}
	}
	if !member {
		return nil, ErrNotGuildMember
	}

	guildsRaw, err := json.Marshal(guildIDs)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByDiscordId(ctx, identity.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &model.User{
			DiscordID: identity.ID,
			Username:  identity.Username,
			Avatar:    identity.Avatar,
			Guilds:    string(guildsRaw),
		}
		if err := s.userRepo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	} else {
		user.Username = identity.Username
		user.Avatar = identity.Avatar
		user.Guilds = string(guildsRaw)
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := security.GenerateToken(user.ID, user.DiscordID, guildIDs)
	if err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: token,
		User:  userDTO,
	}, nil
}

// Logout revokes the token by blacklisting its signature until the token
// would have expired anyway.
func (s *userServiceImpl) Logout(ctx context.Context, tokenString string) error {
	if !s.useRedis {
		return nil
	}

	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return ErrParamInvalid
	}

	err = redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "revoked", security.JWTExpirationTime)
	if err != nil {
		slog.ErrorContext(ctx, "failed to blacklist token", "error", err)
		return UnExpectedError
	}
	return nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return toUserDTO(user)
}
