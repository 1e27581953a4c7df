package core

import "net/http"

const ProblemContentType = "application/problem+json"

// Problem captures the information returned in an RFC 7807 error response.
type Problem struct {
	Type     string
	Title    string
	Status   int
	Detail   string
	Instance string
	Code     string
	Extras   map[string]any
}

// NormalizeProblem ensures the provided problem includes canonical defaults.
func NormalizeProblem(problem *Problem) *Problem {
	if problem == nil {
		problem = &Problem{}
	}
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	if problem.Title == "" {
		problem.Title = http.StatusText(problem.Status)
	}
	if problem.Type == "" {
		problem.Type = "about:blank"
	}
	return problem
}

// BuildProblemBody assembles the serialized representation of the problem.
// Extras never override the reserved members.
func BuildProblemBody(problem *Problem) map[string]any {
	body := make(map[string]any, 6+len(problem.Extras))
	for key, value := range problem.Extras {
		if !isReservedProblemKey(key) {
			body[key] = value
		}
	}
	body["type"] = problem.Type
	body["title"] = problem.Title
	body["status"] = problem.Status
	if problem.Detail != "" {
		body["detail"] = problem.Detail
	}
	if problem.Instance != "" {
		body["instance"] = problem.Instance
	}
	if problem.Code != "" {
		body["code"] = problem.Code
	}
	return body
}

func isReservedProblemKey(key string) bool {
	switch key {
	case "type", "title", "status", "detail", "instance", "code":
		return true
	default:
		return false
	}
}
