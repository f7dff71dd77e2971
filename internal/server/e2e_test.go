package server

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/FarhanAlam-Official/GharSaathi/internal/api"
	"github.com/FarhanAlam-Official/GharSaathi/internal/auth"
	"github.com/FarhanAlam-Official/GharSaathi/internal/properties"
	"github.com/FarhanAlam-Official/GharSaathi/internal/tokenstore"
)

// End-to-end: the client packages talking to a real router over HTTP.

type nullNav struct{ last string }

func (n *nullNav) Navigate(route string) { n.last = route }

func newClientStack(t *testing.T) (*auth.Coordinator, *properties.Service, *tokenstore.MemoryStore, *nullNav) {
	t.Helper()
	router, _ := newTestRouter(t)
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	store := tokenstore.NewMemoryStore()
	client := api.New(ts.URL+"/api", store)
	nav := &nullNav{}
	coord := auth.NewCoordinator(client, store, nav)
	coord.Init()
	return coord, properties.NewService(client), store, nav
}

func TestEndToEndRegisterSearchLogout(t *testing.T) {
	coord, props, store, nav := newClientStack(t)
	ctx := context.Background()

	sess, err := coord.Register(ctx, auth.RegisterRequest{
		Email:     "sita@example.com",
		Password:  "secret1",
		FirstName: "Sita",
		LastName:  "Shrestha",
		Role:      auth.RoleLandlord,
	})
	require.NoError(t, err)
	require.Equal(t, "Sita", sess.FirstName)
	require.Equal(t, auth.RouteLandlordDashboard, nav.last)
	require.NotEmpty(t, store.AccessToken())

	res, err := props.Search(ctx, properties.SearchCriteria{Keyword: "anything", Size: 12})
	require.NoError(t, err)
	require.Zero(t, res.TotalProperties)

	coord.Logout(ctx)
	require.False(t, coord.IsAuthenticated())
	require.Empty(t, store.AccessToken())
	require.Equal(t, auth.RouteLogin, nav.last)
}

func TestEndToEndRefreshRecoversExpiredAccess(t *testing.T) {
	coord, _, store, _ := newClientStack(t)
	ctx := context.Background()

	_, err := coord.Register(ctx, auth.RegisterRequest{
		Email:     "ram@example.com",
		Password:  "secret1",
		FirstName: "Ram",
		LastName:  "Thapa",
		Role:      auth.RoleTenant,
	})
	require.NoError(t, err)
	oldRefresh := store.RefreshToken()

	// simulate an expired access token: the next authenticated call gets a
	// 401, refreshes silently and retries
	store.SetAccessToken("expired-garbage")

	require.NoError(t, coord.RefreshToken(ctx))
	require.NotEqual(t, "expired-garbage", store.AccessToken())
	require.NotEqual(t, oldRefresh, store.RefreshToken(), "refresh tokens rotate on use")
	require.True(t, coord.IsAuthenticated())
}

func TestEndToEndInterceptorRetryOn401(t *testing.T) {
	coord, _, store, nav := newClientStack(t)
	ctx := context.Background()

	_, err := coord.Register(ctx, auth.RegisterRequest{
		Email:     "ram@example.com",
		Password:  "secret1",
		FirstName: "Ram",
		LastName:  "Thapa",
		Role:      auth.RoleTenant,
	})
	require.NoError(t, err)

	// break the access token; logout-all is auth-gated so the first attempt
	// 401s, the interceptor refreshes and the retry succeeds
	store.SetAccessToken("expired-garbage")
	coord.LogoutAll(ctx)

	require.False(t, coord.IsAuthenticated())
	require.Equal(t, auth.RouteLogin, nav.last)
}
