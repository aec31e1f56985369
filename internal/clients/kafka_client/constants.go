package kafka_client

import "time"

const (
	KAFKA_TOPIC_SENTIMENT_RESULTS = "sentiment-results" // analysis results from the web UI
	KAFKA_GROUP_ARCHIVER          = "thaisenti-archiver"
)

const (
	BATCH_SIZE    = 50
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 3
	RETRY_DELAY   = 2 * time.Second
	FLUSH_TIMEOUT = 5000 // ms
	READ_TIMEOUT  = 500 * time.Millisecond
)
