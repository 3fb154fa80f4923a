package follower

// Reference is the lightweight payload returned by list queries;
// profile detail is fetched per username through the account routes.
type Reference struct {
	Username string `json:"username"`
}

type ListRequest struct {
	Page     int    `json:"page"`
	Category string `json:"category"`
	Username string `json:"username"`
}

const (
	CategoryFollower  = "follower"
	CategoryFollowing = "following"
)

type Relation struct {
	IsFollower  bool `json:"isFollower"`
	IsFollowing bool `json:"isFollowing"`
}

type Counts struct {
	FollowerCount int64 `json:"followerCount"`
	FollowCount   int64 `json:"followCount"`
}
