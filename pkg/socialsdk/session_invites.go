package socialsdk

import (
	"context"
	"net/http"
)

// CreateInvite mints an invite for two recipients.
func (s *Session) CreateInvite(ctx context.Context, recipients [2]InviteRecipient) (Invite, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/invites", s.token, CreateInviteRequest{
		Recipients: recipients,
	})
	if err != nil {
		return Invite{}, err
	}
	var inv Invite
	if err := decodeJSON(resp, &inv, http.StatusCreated); err != nil {
		return Invite{}, err
	}
	return inv, nil
}

// OpenInvites lists unresolved invites the caller created or is addressed
// by.
func (s *Session) OpenInvites(ctx context.Context) ([]Invite, error) {
	resp, err := s.client.doJSON(ctx, http.MethodGet, "/v1/invites", s.token, nil)
	if err != nil {
		return nil, err
	}
	var ir InvitesResponse
	if err := decodeJSON(resp, &ir, http.StatusOK); err != nil {
		return nil, err
	}
	return ir.Invites, nil
}

// AcceptInvite claims recipient slot 1 or 2 of the invite. The response
// carries the new thread when this acceptance completed the invite.
func (s *Session) AcceptInvite(ctx context.Context, code string, recipient int) (AcceptInviteResponse, error) {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/invites/"+code+"/accept", s.token, AcceptInviteRequest{
		Recipient: recipient,
	})
	if err != nil {
		return AcceptInviteResponse{}, err
	}
	var ar AcceptInviteResponse
	if err := decodeJSON(resp, &ar, http.StatusOK); err != nil {
		return AcceptInviteResponse{}, err
	}
	return ar, nil
}

// ResendInvite re-delivers the invite to one slot. Creator only.
func (s *Session) ResendInvite(ctx context.Context, code string, recipient int) error {
	resp, err := s.client.doJSON(ctx, http.MethodPost, "/v1/invites/"+code+"/resend", s.token, ResendInviteRequest{
		Recipient: recipient,
	})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
