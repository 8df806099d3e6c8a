package handlers

import (
	"serviceregistry/domain"
)

// fromRegisterRequest converts RegisterRequest to domain.RegistrationRequest.
// The host comes from the transport, not the body; authoritative field
// validation happens in the registry engine.
func fromRegisterRequest(req RegisterRequest, host string) domain.RegistrationRequest {
	return domain.RegistrationRequest{
		ServiceType: req.ServiceType,
		Host:        host,
		Port:        string(req.Port),
		Meta:        req.Meta,
	}
}
