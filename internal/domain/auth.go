package domain

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moltfund/backend/internal/client"
	"github.com/moltfund/backend/internal/entity"
	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/pkg/crypto"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

type AuthDomain interface {
	RequestMagicLink(ctx context.Context, req *model.RequestMagicLinkRequest) (*model.RequestMagicLinkResponse, error)
	VerifyMagicLink(ctx context.Context, req *model.VerifyMagicLinkRequest) (*model.VerifyMagicLinkResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
}

type authDomain struct {
	creatorRepo   repository.CreatorRepository
	magicLinkRepo repository.MagicLinkRepository
	emailCaller   client.EmailNotifierCaller
}

func NewAuthDomain(
	creatorRepo repository.CreatorRepository,
	magicLinkRepo repository.MagicLinkRepository,
	emailCaller client.EmailNotifierCaller,
) *authDomain {
	return &authDomain{
		creatorRepo:   creatorRepo,
		magicLinkRepo: magicLinkRepo,
		emailCaller:   emailCaller,
	}
}

// RequestMagicLink creates the creator on first sight of the email, then
// mails a one-time sign-in link. Only the token hash touches the database.
func (d *authDomain) RequestMagicLink(
	ctx context.Context, req *model.RequestMagicLinkRequest,
) (*model.RequestMagicLinkResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid email address")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	creator, err := d.creatorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get creator by email: %v", err)
			return nil, errorx.Unknown
		}

		creator = &entity.Creator{
			Base:      entity.Base{ID: uuid.NewString()},
			Email:     req.Email,
			Name:      req.Name,
			KYCStatus: entity.KYCNone,
		}

		if err := d.creatorRepo.Create(ctx, creator); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create creator: %v", err)
			return nil, errorx.Unknown
		}
	}

	token, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate magic link token: %v", err)
		return nil, errorx.Unknown
	}

	magicLinkCfg := xcontext.Configs(ctx).Auth.MagicLink
	err = d.magicLinkRepo.Create(ctx, &entity.MagicLink{
		Base:      entity.Base{ID: uuid.NewString()},
		CreatorID: creator.ID,
		TokenHash: crypto.SHA256Hex([]byte(token)),
		ExpiredAt: time.Now().Add(magicLinkCfg.Expiration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create magic link: %v", err)
		return nil, errorx.Unknown
	}

	link := fmt.Sprintf("%s?token=%s", magicLinkCfg.BaseURL, token)
	if err := d.emailCaller.SendMagicLink(ctx, creator.Email, link); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot send magic link email: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot deliver the sign-in email")
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.RequestMagicLinkResponse{}, nil
}

func (d *authDomain) VerifyMagicLink(
	ctx context.Context, req *model.VerifyMagicLinkRequest,
) (*model.VerifyMagicLinkResponse, error) {
	link, err := d.magicLinkRepo.GetByTokenHash(ctx, crypto.SHA256Hex([]byte(req.Token)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired link")
		}

		xcontext.Logger(ctx).Errorf("Cannot get magic link: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(link.ExpiredAt) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired link")
	}

	// MarkUsed is conditional on used_at being null, so two concurrent
	// verifications of the same token cannot both succeed.
	if err := d.magicLinkRepo.MarkUsed(ctx, link.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired link")
		}

		xcontext.Logger(ctx).Errorf("Cannot mark magic link as used: %v", err)
		return nil, errorx.Unknown
	}

	creator, err := d.creatorRepo.GetByID(ctx, link.CreatorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creator %s: %v", link.CreatorID, err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(
		xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		model.AccessToken{ID: creator.ID, Email: creator.Email})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.VerifyMagicLinkResponse{
		AccessToken: token,
		Creator:     model.ConvertCreator(creator),
	}, nil
}

func (d *authDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	creator, err := d.creatorRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get creator: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertCreator(creator))
	return &resp, nil
}
