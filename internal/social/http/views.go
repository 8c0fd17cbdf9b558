package http

import (
	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/service"
	"github.com/tetherchat/tether/pkg/socialsdk"
)

// publicUser hides contact details; for anyone other than the owner.
func publicUser(u domain.User) socialsdk.User {
	return socialsdk.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

// ownUser includes contact channels and their verification state.
func ownUser(u domain.User) socialsdk.User {
	view := publicUser(u)
	view.Email = u.Email
	view.Phone = u.Phone
	view.EmailVerified = u.EmailVerifiedAt != nil
	view.PhoneVerified = u.PhoneVerifiedAt != nil
	return view
}

func inviteView(inv domain.Invite) socialsdk.Invite {
	view := socialsdk.Invite{
		Code:      inv.Code,
		CreatedBy: inv.CreatedBy,
		ThreadID:  inv.ThreadID,
		CreatedAt: inv.CreatedAt,
		ExpiresAt: inv.ExpiresAt,
	}
	for i, sl := range inv.Slots {
		view.Slots[i] = socialsdk.InviteSlot{
			Channel:  string(sl.Channel),
			Value:    sl.Value,
			Accepted: sl.Accepted(),
		}
	}
	return view
}

func threadView(t domain.Thread) socialsdk.Thread {
	return socialsdk.Thread{
		ID:           t.ID,
		Participants: t.Participants,
		CreatedAt:    t.CreatedAt,
	}
}

func notificationView(n domain.Notification) socialsdk.Notification {
	return socialsdk.Notification{
		ID:         n.ID,
		Type:       string(n.Type),
		Title:      n.Title,
		Message:    n.Message,
		FromUserID: n.FromUserID,
		RelatedID:  n.RelatedID,
		Read:       n.Read,
		CreatedAt:  n.CreatedAt,
	}
}

func friendView(f service.FriendEntry) socialsdk.Friend {
	return socialsdk.Friend{
		UserID:   f.UserID,
		Username: f.Username,
		Since:    f.Since,
	}
}

func pendingView(p service.PendingEntry) socialsdk.FriendRequest {
	return socialsdk.FriendRequest{
		ID:        p.RequestID,
		UserID:    p.UserID,
		Username:  p.Username,
		Incoming:  p.Incoming,
		CreatedAt: p.CreatedAt,
	}
}
