package farcaster

// Hub message and body type constants.
const (
	MessageTypeLinkAdd = "MESSAGE_TYPE_LINK_ADD"
	LinkTypeFollow     = "follow"
	UserDataTypePFP    = "USER_DATA_TYPE_PFP"
)

// Follow is one follow link published by an account. Timestamp is in
// Farcaster epoch seconds.
type Follow struct {
	TargetFID uint64
	Timestamp int64
}

type transferResponse struct {
	Transfer struct {
		Username string `json:"username"`
		To       uint64 `json:"to"`
	} `json:"transfer"`
}

type userDataResponse struct {
	Data struct {
		UserDataBody struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"userDataBody"`
	} `json:"data"`
}

type linksResponse struct {
	Messages []struct {
		Data struct {
			Type      string `json:"type"`
			FID       uint64 `json:"fid"`
			Timestamp int64  `json:"timestamp"`
			LinkBody  struct {
				Type      string `json:"type"`
				TargetFID uint64 `json:"targetFid"`
			} `json:"linkBody"`
		} `json:"data"`
	} `json:"messages"`
	NextPageToken string `json:"nextPageToken"`
}
