package server

import "fmt"

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo() {
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
}

// displayEndpoints shows available API endpoints
func (s *Server) displayEndpoints() {
	fmt.Println("Available endpoints:")
	fmt.Println("  GET    /health                            - Health check")
	fmt.Println("  GET    /stats                             - Server statistics")
	fmt.Println("  GET    /api/v1/capabilities               - Scan modes and industries")
	fmt.Println("  POST   /api/v1/parse                      - Parse resume upload (requires API key)")
	fmt.Println("  POST   /api/v1/score                      - Score resume upload (requires API key)")
	fmt.Println("  POST   /api/v1/analyze                    - Parse and score upload (requires API key)")
	fmt.Println("  POST   /api/v1/fixes                      - Fix recommendations (requires API key)")
	fmt.Println("  POST   /api/v1/resumes                    - Create stored resume (requires API key)")
	fmt.Println("  POST   /api/v1/resumes/import             - Import stored resume from upload (requires API key)")
	fmt.Println("  GET    /api/v1/resumes                    - List stored resumes (requires API key)")
	fmt.Println("  GET    /api/v1/resumes/{id}               - Fetch stored resume (requires API key)")
	fmt.Println("  PATCH  /api/v1/resumes/{id}               - Update stored resume (requires API key)")
	fmt.Println("  DELETE /api/v1/resumes/{id}               - Delete stored resume (requires API key)")
	fmt.Println("  POST   /api/v1/resumes/{id}/save          - Replace stored resume (requires API key)")
	fmt.Println("  POST   /api/v1/resumes/{id}/fixes         - Recommend fixes (requires API key)")
	fmt.Println("  POST   /api/v1/resumes/{id}/fixes/apply   - Apply auto-fix (requires API key)")
	fmt.Println("  POST   /api/v1/resumes/{id}/fixes/apply-all - Apply all auto-fixes (requires API key)")
	fmt.Println("  POST   /api/v1/resumes/{id}/sections/{section} - Add section entry (requires API key)")
	fmt.Println("  DELETE /api/v1/resumes/{id}/sections/{section}/{index} - Remove section entry (requires API key)")
	fmt.Println("  GET    /api/v1/resumes/{id}/export/text   - Export stored resume as text (requires API key)")
}

// displayAuthInfo shows authentication configuration
func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Printf("API authentication: ENABLED (%d keys configured)\n", len(s.APIKeys))
		fmt.Println("Include 'X-API-Key: <your-key>' header in requests to /api/v1 endpoints")
	} else {
		fmt.Println("API authentication: DISABLED (no API keys configured)")
		fmt.Println("WARNING: API endpoints are publicly accessible!")
	}
}

// displayRequestLimitInfo shows request size limit configuration
func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Printf("Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Println("Request size limit: DISABLED")
		fmt.Println("WARNING: No request size limits configured!")
	}
}

// displayRateLimitInfo shows rate limiting configuration
func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: ENABLED (%d requests/min, burst: %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Println("  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Println("  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Println("Rate limiting: DISABLED")
		fmt.Println("WARNING: No rate limiting configured!")
	}
}
