package attendance

// SubmitBody is the optional location payload of a submission.
type SubmitBody struct {
	Latitude  *float64 `json:"latitude" form:"latitude"`
	Longitude *float64 `json:"longitude" form:"longitude"`
	Accuracy  *float64 `json:"accuracy" form:"accuracy"`
	Address   *string  `json:"address" form:"address"`
}

// MobileSubmitRequest is the mobile submission envelope: the transition
// kind, the replay-protection nonce, and the device it was issued to.
type MobileSubmitRequest struct {
	Kind     string `json:"kind" form:"kind"`
	Nonce    string `json:"nonce" form:"nonce"`
	DeviceID string `json:"device_id" form:"device_id"`
	SubmitBody
}
