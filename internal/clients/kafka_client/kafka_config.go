package kafka_client

type KafkaConfig struct {
	Broker   string
	Topic    string
	ClientID string
	GroupID  string
}

func (c KafkaConfig) Enabled() bool {
	return c.Broker != ""
}

func (c KafkaConfig) topic() string {
	if c.Topic == "" {
		return KAFKA_TOPIC_SENTIMENT_RESULTS
	}
	return c.Topic
}

func (c KafkaConfig) groupID() string {
	if c.GroupID == "" {
		return KAFKA_GROUP_ARCHIVER
	}
	return c.GroupID
}
