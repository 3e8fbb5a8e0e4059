package mocks

// Directories are the fixture sub-folders, in the order they are listed.
var Directories = []Directory{
	{Name: "auth", Comment: "Authentication endpoints"},
	{Name: "users", Comment: "User endpoints"},
	{Name: "posts", Comment: "Post endpoints"},
	{Name: "messages", Comment: "Messaging endpoints"},
	{Name: "qa", Comment: "Q&A endpoints"},
	{Name: "events", Comment: "Event endpoints"},
	{Name: "marketplace", Comment: "Marketplace endpoints"},
	{Name: "resources", Comment: "Resource endpoints"},
	{Name: "notifications", Comment: "Notification endpoints"},
	{Name: "groups", Comment: "Group endpoints"},
}

// Directory is a fixture sub-folder.
type Directory struct {
	Name    string
	Comment string
}

// Fixture describes one mock response file. Error fixtures carry no
// endpoint because they illustrate a response shape shared by many routes.
type Fixture struct {
	Path     string
	Method   string
	Endpoint string
}

// Catalog lists every fixture the generator writes.
var Catalog = []Fixture{
	{Path: "auth/register.json", Method: "POST", Endpoint: "/api/v1/auth/register"},
	{Path: "auth/login.json", Method: "POST", Endpoint: "/api/v1/auth/login"},
	{Path: "auth/logout.json", Method: "POST", Endpoint: "/api/v1/auth/logout"},
	{Path: "auth/refresh-token.json", Method: "POST", Endpoint: "/api/v1/auth/refresh-token"},
	{Path: "users/123.json", Method: "GET", Endpoint: "/api/v1/users/{userId}"},
	{Path: "users/search.json", Method: "GET", Endpoint: "/api/v1/users/search"},
	{Path: "users/followers.json", Method: "GET", Endpoint: "/api/v1/users/{userId}/followers"},
	{Path: "posts/feed.json", Method: "GET", Endpoint: "/api/v1/posts/feed"},
	{Path: "posts/456.json", Method: "GET", Endpoint: "/api/v1/posts/{postId}"},
	{Path: "posts/comments.json", Method: "GET", Endpoint: "/api/v1/posts/{postId}/comments"},
	{Path: "messages/conversations.json", Method: "GET", Endpoint: "/api/v1/messages/conversations"},
	{Path: "messages/conversation-detail.json", Method: "GET", Endpoint: "/api/v1/messages/conversations/{conversationId}"},
	{Path: "qa/questions.json", Method: "GET", Endpoint: "/api/v1/qa/questions"},
	{Path: "qa/question-detail.json", Method: "GET", Endpoint: "/api/v1/qa/questions/{questionId}"},
	{Path: "events/list.json", Method: "GET", Endpoint: "/api/v1/events"},
	{Path: "marketplace/listings.json", Method: "GET", Endpoint: "/api/v1/marketplace/listings"},
	{Path: "resources/list.json", Method: "GET", Endpoint: "/api/v1/resources"},
	{Path: "notifications/list.json", Method: "GET", Endpoint: "/api/v1/notifications"},
	{Path: "groups/list.json", Method: "GET", Endpoint: "/api/v1/groups"},
	{Path: "auth/error-validation.json"},
	{Path: "auth/error-unauthorized.json"},
	{Path: "users/error-not-found.json"},
	{Path: "error-rate-limit.json"},
}
