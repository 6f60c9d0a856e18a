package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/miwebservice/internal/database"
	"github.com/deppfellow/miwebservice/internal/server"
)

// SessionKey is the Echo context key of the request's database session.
const SessionKey = "db_session"

// SessionMiddleware scopes one database.Session to each request.
type SessionMiddleware struct {
	server *server.Server
}

func NewSessionMiddleware(s *server.Server) *SessionMiddleware {
	return &SessionMiddleware{server: s}
}

// Session acquires a session before the handler runs and always releases it
// afterwards, rolling back whatever the handler did not commit.
func (sm *SessionMiddleware) Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := sm.server.DB.Acquire()
			defer func() {
				if err := session.Close(); err != nil {
					GetLogger(c).Error().Err(err).Msg("failed to release database session")
				}
			}()

			c.Set(SessionKey, session)
			return next(c)
		}
	}
}

// GetSession returns the request's database session, or nil when the route
// is not behind Session().
func GetSession(c echo.Context) *database.Session {
	session, _ := c.Get(SessionKey).(*database.Session)
	return session
}
