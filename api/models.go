package api

// ApiResponse is the envelope for every response
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// TiltRequest tilts the head by Amount hundred position units
type TiltRequest struct {
	Direction string `json:"direction" binding:"required,oneof=left right"`
	Amount    int    `json:"amount" binding:"min=0,max=9"`
}

// SpeedRequest sets the speed of every servo. Speed is a pointer so 0 passes the required check
type SpeedRequest struct {
	Speed *int `json:"speed" binding:"required,min=0,max=100"`
}

// CommandResponse echoes the protocol bytes that were sent
type CommandResponse struct {
	Command string `json:"command"`
}

// HealthResponse reports server uptime
type HealthResponse struct {
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}
