package pkg

const (
	// average travel speed inside the city, km/h
	AVG_SPEED_KMH = 25.0

	DEFAULT_START_POINT_ID int64 = 1

	// search context is polled once every CANCEL_CHECK_INTERVAL expanded nodes
	CANCEL_CHECK_INTERVAL = 4096
)

// path names are joined with this separator in every report
const PATH_SEPARATOR = " -> "
