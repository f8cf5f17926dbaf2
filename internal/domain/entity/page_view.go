package entity

import "time"

// MaxUserAgentLength longitud máxima almacenada del User-Agent.
const MaxUserAgentLength = 500

// PageView visita registrada por el middleware de analítica.
type PageView struct {
	ID         string
	UserID     *string
	SessionKey string
	URL        string
	Referer    string
	IPAddress  string
	UserAgent  string
	DurationMs int64
	CreatedAt  time.Time
}
