package apiclient

import (
	"context"
	"fmt"

	"peekweb/internal/models"
)

func (c *Client) ListFollows(ctx context.Context, page, limit int) (List[models.Follow], error) {
	return fetchList[models.Follow](ctx, c, "/follows", pageQuery(page, limit), "follows")
}

type followRequest struct {
	EventID uint `json:"event_id"`
}

func (c *Client) Follow(ctx context.Context, eventID uint) error {
	return c.post(ctx, "/follows", followRequest{EventID: eventID}, nil)
}

func (c *Client) Unfollow(ctx context.Context, eventID uint) error {
	return c.delete(ctx, fmt.Sprintf("/follows/%d", eventID))
}

// IsFollowing 当前用户是否关注了该事件
func (c *Client) IsFollowing(ctx context.Context, eventID uint) (bool, error) {
	var st models.FollowStatus
	if err := c.get(ctx, fmt.Sprintf("/follows/check/%d", eventID), nil, &st); err != nil {
		return false, err
	}
	return st.IsFollowing, nil
}
