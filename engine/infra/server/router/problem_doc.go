package router

// ProblemDocument models an RFC 7807 error envelope for API responses.
type ProblemDocument struct {
	Type     string `json:"type,omitempty"     example:"about:blank"`
	Title    string `json:"title"              example:"Bad Request"`
	Status   int    `json:"status"             example:"400"`
	Detail   string `json:"detail,omitempty"   example:"limit must be a positive integer"`
	Instance string `json:"instance,omitempty" example:"/post/read_all_posts"`
	Code     string `json:"code,omitempty"     example:"BAD_REQUEST"`
}
