// Package tweetdto chứa các struct input cho domain tweet.
package tweetdto

// TweetCreateInput dữ liệu đầu vào khi tạo tweet
type TweetCreateInput struct {
	Content string `json:"content" validate:"required,no_xss" maxLength:"500"`
}

// TweetUpdateInput dữ liệu đầu vào khi sửa tweet
type TweetUpdateInput struct {
	Content string `json:"content" validate:"required,no_xss" maxLength:"500"`
}
