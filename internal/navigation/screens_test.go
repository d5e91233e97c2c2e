package navigation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"equipment-tracker/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedState session.State

func (f fixedState) State() session.State { return session.State(f) }

func TestReachable(t *testing.T) {
	assert.Equal(t, []Screen{ScreenSplash}, Reachable(session.SplashVisible))
	assert.Equal(t, []Screen{ScreenLogin}, Reachable(session.UnauthenticatedStack))
	assert.Equal(t, []Screen{ScreenDashboard, ScreenTickets, ScreenInventory}, Reachable(session.AuthenticatedStack))

	assert.False(t, IsReachable(session.AuthenticatedStack, ScreenLogin))
	assert.False(t, IsReachable(session.UnauthenticatedStack, ScreenTickets))
	assert.False(t, IsReachable(session.SplashVisible, ScreenLogin))
}

func TestRequireScreen(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }

	cases := []struct {
		state session.State
		code  int
	}{
		{session.SplashVisible, http.StatusConflict},
		{session.UnauthenticatedStack, http.StatusConflict},
		{session.AuthenticatedStack, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.state.String(), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := RequireScreen(fixedState(tc.state), zap.NewNop(), ScreenTickets)
			require.NoError(t, mw(handler)(c))
			assert.Equal(t, tc.code, rec.Code)

			if tc.code == http.StatusConflict {
				var body struct {
					Status bool `json:"status"`
					Body   struct {
						State   string   `json:"state"`
						Screens []string `json:"screens"`
					} `json:"body"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.False(t, body.Status)
				assert.Equal(t, tc.state.String(), body.Body.State)
			}
		})
	}
}
