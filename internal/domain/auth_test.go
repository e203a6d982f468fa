package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moltfund/backend/internal/model"
	"github.com/moltfund/backend/internal/repository"
	"github.com/moltfund/backend/internal/testutil"
	"github.com/moltfund/backend/pkg/errorx"
	"github.com/moltfund/backend/pkg/xcontext"
)

func newAuthDomainForTest(emailCaller *testutil.MockEmailCaller) AuthDomain {
	return NewAuthDomain(
		repository.NewCreatorRepository(),
		repository.NewMagicLinkRepository(),
		emailCaller,
	)
}

func linkToken(t *testing.T, link string) string {
	_, token, found := strings.Cut(link, "token=")
	require.True(t, found)
	return token
}

func Test_authDomain_magicLinkFlow(t *testing.T) {
	ctx := testutil.MockContext(t)
	emailCaller := testutil.NewMockEmailCaller()
	authDomain := newAuthDomainForTest(emailCaller)

	_, err := authDomain.RequestMagicLink(ctx, &model.RequestMagicLinkRequest{
		Email: "new-creator@example.com",
		Name:  "New Creator",
	})
	require.NoError(t, err)
	require.Len(t, emailCaller.Links, 1)

	resp, err := authDomain.VerifyMagicLink(ctx, &model.VerifyMagicLinkRequest{
		Token: linkToken(t, emailCaller.Links[0]),
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "new-creator@example.com", resp.Creator.Email)

	var accessToken model.AccessToken
	err = xcontext.TokenEngine(ctx).Verify(resp.AccessToken, &accessToken)
	require.NoError(t, err)
	require.Equal(t, resp.Creator.ID, accessToken.ID)

	// GetMe resolves the same creator.
	meCtx := xcontext.WithRequestUserID(ctx, accessToken.ID)
	me, err := authDomain.GetMe(meCtx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, "New Creator", me.Name)
}

func Test_authDomain_magicLinkIsSingleUse(t *testing.T) {
	ctx := testutil.MockContext(t)
	emailCaller := testutil.NewMockEmailCaller()
	authDomain := newAuthDomainForTest(emailCaller)

	_, err := authDomain.RequestMagicLink(ctx, &model.RequestMagicLinkRequest{
		Email: "creator@example.com",
	})
	require.NoError(t, err)

	token := linkToken(t, emailCaller.Links[0])
	_, err = authDomain.VerifyMagicLink(ctx, &model.VerifyMagicLinkRequest{Token: token})
	require.NoError(t, err)

	_, err = authDomain.VerifyMagicLink(ctx, &model.VerifyMagicLinkRequest{Token: token})
	require.Error(t, err)
	require.Equal(t, errorx.Unauthenticated, err.(errorx.Error).Code)
}

func Test_authDomain_VerifyMagicLink_unknownToken(t *testing.T) {
	ctx := testutil.MockContext(t)
	authDomain := newAuthDomainForTest(testutil.NewMockEmailCaller())

	_, err := authDomain.VerifyMagicLink(ctx, &model.VerifyMagicLinkRequest{Token: "garbage"})
	require.Error(t, err)
	require.Equal(t, errorx.Unauthenticated, err.(errorx.Error).Code)
}

func Test_authDomain_RequestMagicLink_existingCreator(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)
	emailCaller := testutil.NewMockEmailCaller()
	authDomain := newAuthDomainForTest(emailCaller)

	_, err := authDomain.RequestMagicLink(ctx, &model.RequestMagicLinkRequest{
		Email: testutil.Creator1.Email,
	})
	require.NoError(t, err)

	resp, err := authDomain.VerifyMagicLink(ctx, &model.VerifyMagicLinkRequest{
		Token: linkToken(t, emailCaller.Links[0]),
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Creator1.ID, resp.Creator.ID)
}

func Test_authDomain_RequestMagicLink_invalidEmail(t *testing.T) {
	ctx := testutil.MockContext(t)
	authDomain := newAuthDomainForTest(testutil.NewMockEmailCaller())

	_, err := authDomain.RequestMagicLink(ctx, &model.RequestMagicLinkRequest{Email: "not-an-email"})
	require.Error(t, err)
	require.Equal(t, errorx.BadRequest, err.(errorx.Error).Code)
}
