package appconf

// Environment identifies the operating environment for the application.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// EnvFlagToEnvironment converts an environment flag value into an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Production:
		return "production"
	case Test:
		return "test"
	default:
		return "development"
	}
}

// RankWeights holds the blend weights for the recommended sort order.
// The three weights are normalized before use, so they only need to be
// meaningful relative to each other.
type RankWeights struct {
	Rating   float64
	Volume   float64
	Distance float64
}

// DefaultRankWeights returns the canonical recommended-sort weights.
func DefaultRankWeights() RankWeights {
	return RankWeights{Rating: 0.4, Volume: 0.4, Distance: 0.2}
}

// Config holds all the configuration settings for the application. These are
// read from command-line flags when the application starts.
type Config struct {
	Port      int
	Env       Environment
	JWTSecret string

	// DataSource is either an HTTP(S) URL or a local path to the
	// encounters CSV file.
	DataSource string
	DBPath     string
	StaticDir  string

	// RateLimit is the number of requests allowed per second per client.
	// Zero disables all requests; negative disables limiting.
	RateLimit int

	// MaxCompare bounds the comparison selection set. Values outside
	// [3, 10] are clamped.
	MaxCompare int

	// DefaultLat and DefaultLon are used for distance filtering and
	// sorting when the caller does not supply a coordinate.
	DefaultLat float64
	DefaultLon float64

	RankWeights RankWeights
}

const (
	minCompareLimit = 3
	maxCompareLimit = 10
)

// CompareLimit returns the configured comparison bound clamped to the
// supported range.
func (c Config) CompareLimit() int {
	switch {
	case c.MaxCompare < minCompareLimit:
		return minCompareLimit
	case c.MaxCompare > maxCompareLimit:
		return maxCompareLimit
	default:
		return c.MaxCompare
	}
}
