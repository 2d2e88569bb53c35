package request

import "github.com/mcoot/badancup/internal/services/registration"

// RegisterPlayerRequest is the request body for POST /api/v1/players
type RegisterPlayerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Village string `json:"village"`
	Team    string `json:"team"`
}

// Submission converts the request for the registration service
func (r RegisterPlayerRequest) Submission(ip string) registration.Submission {
	return registration.Submission{
		Name:    r.Name,
		Phone:   r.Phone,
		Village: r.Village,
		Team:    r.Team,
		IP:      ip,
	}
}
