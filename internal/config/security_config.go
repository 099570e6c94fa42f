// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityService                      // Service token required
)

// EndpointSecurityConfig maps gRPC methods to their required security level.
// Every method here is called by peer services, never by end users.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// RequestService
	"/eventreg.request.v1.RequestService/CountRequests": SecurityService,

	// Directory services
	"/eventreg.directory.v1.EventDirectory/DescribeEvent": SecurityService,
	"/eventreg.directory.v1.UserDirectory/GetUser":        SecurityService,

	// Reflection is left open for grpcurl
	"/grpc.reflection.v1.ServerReflection/ServerReflectionInfo":      SecurityPublic,
	"/grpc.reflection.v1alpha.ServerReflection/ServerReflectionInfo": SecurityPublic,
}

// GetSecurityLevel returns the security level for a given method
func GetSecurityLevel(method string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityService
}
