package models

// SocialState is the relationship snapshot returned after follow and unfollow
// operations and embedded in profile responses. FollowerCount counts the
// target user's followers, FollowingCount counts how many users the viewer
// follows, and the Is* flags describe the viewer's relationship to the target.
type SocialState struct {
	FollowerCount  int  `json:"follower_count"`
	FollowingCount int  `json:"following_count"`
	IsFollowing    bool `json:"is_following"`
	IsFollowedBy   bool `json:"is_followed_by"`
}
