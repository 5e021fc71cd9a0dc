package types

// SynthesizeReq is the body shared by the synchronous and asynchronous
// synthesis endpoints. Speaker, Speed and SSML are optional; handlers resolve
// their defaults before the request is fingerprinted.
type SynthesizeReq struct {
	Text    string   `json:"text"`
	Speaker string   `json:"speaker"`
	Speed   *float64 `json:"speed"`
	SSML    *bool    `json:"ssml"`
}

type AsyncResp struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	Cached bool   `json:"cached,omitempty"`
}

// StatusResp is returned by the polling endpoint and pushed over the job
// events websocket.
type StatusResp struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
	URL    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}
