package models

type HuggingFaceRequest struct {
	Inputs  []string           `json:"inputs"`
	Options *HuggingFaceOption `json:"options,omitempty"`
}

type HuggingFaceOption struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassificationBatchResponse holds the label distribution for every input, in input order.
type ClassificationBatchResponse [][]LabelScore

type HuggingFaceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}
