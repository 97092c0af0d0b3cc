package types

// RawComment is the sum type over the two source shapes a comment record
// can arrive in. Normalization dispatches on the concrete variant instead
// of duck-typing field access.
type RawComment interface {
	rawComment()
}

// RawUser is the nested user object of the network-capture shape.
type RawUser struct {
	UID         string     `json:"uid"`
	SecUID      string     `json:"sec_uid"`
	Nickname    string     `json:"nickname"`
	AvatarThumb RawAvatars `json:"avatar_thumb"`
}

// RawAvatars holds the avatar URL candidates the API returns.
type RawAvatars struct {
	URLList []string `json:"url_list"`
}

// RawTextExtra is one annotation of the comment text: a hashtag or an
// @-mention, depending on which fields are populated.
type RawTextExtra struct {
	Type        int    `json:"type"`
	HashtagName string `json:"hashtag_name"`
	UserID      string `json:"user_id"`
}

// RawNetworkComment is the rich shape captured from the platform's
// comment-list API responses.
type RawNetworkComment struct {
	CID             string         `json:"cid"`
	Text            string         `json:"text"`
	CreateTime      int64          `json:"create_time"`
	DiggCount       int64          `json:"digg_count"`
	ReplyTotal      int64          `json:"reply_comment_total"`
	ReplyToUserID   string         `json:"reply_to_userid"`
	ReplyToNickname string         `json:"reply_to_username"`
	StickPosition   int            `json:"stick_position"`
	IsHotComment    int            `json:"is_hot_comment"`
	IPLabel         string         `json:"ip_label"`
	User            RawUser        `json:"user"`
	TextExtra       []RawTextExtra `json:"text_extra"`
}

func (RawNetworkComment) rawComment() {}

// RawDOMComment is the flat shape produced by heuristic DOM extraction.
// Most identity fields are absent and the counters arrive as display text.
type RawDOMComment struct {
	CommentID string
	Nickname  string
	UserLink  string
	Content   string
	TimeLabel string
	IPLabel   string
	LikeText  string
	ReplyText string
}

func (RawDOMComment) rawComment() {}
