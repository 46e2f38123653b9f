package models

import (
	"time"

	id "proofpack/pkg/domain"
)

// ShareGrant lets holders of a share token reach one pack. Only the token
// digest is kept; the raw token is returned once, at creation.
type ShareGrant struct {
	TokenDigest string     `json:"-"`
	ProofPackID id.PackID  `json:"proof_pack_id"`
	CreatedBy   id.UserID  `json:"created_by"`
	Label       string     `json:"label,omitempty"`
	NDAVersion  int        `json:"nda_version"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Revoked     bool       `json:"revoked"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	Version     int64      `json:"version"`
}

// IsActive reports whether the grant still admits access at now.
func (g *ShareGrant) IsActive(now time.Time) bool {
	return !g.Revoked && now.Before(g.ExpiresAt)
}

func (g *ShareGrant) ApplyRevoke(now time.Time) {
	if g.Revoked {
		return
	}
	at := now
	g.Revoked = true
	g.RevokedAt = &at
}

// BumpNDAVersion supersedes every acceptance recorded so far.
func (g *ShareGrant) BumpNDAVersion() {
	g.NDAVersion++
}

// NDAAcceptance is keyed by (TokenDigest, UserID). Recording the same version
// twice keeps the first AcceptedAt.
type NDAAcceptance struct {
	TokenDigest string    `json:"-"`
	UserID      id.UserID `json:"user_id"`
	Version     int       `json:"version"`
	AcceptedAt  time.Time `json:"accepted_at"`
}

// Covers reports whether the acceptance satisfies the grant's current NDA.
func (a *NDAAcceptance) Covers(g *ShareGrant) bool {
	return a != nil && a.Version == g.NDAVersion
}

// AccessAction names what a disclosure read returned.
type AccessAction string

const (
	ActionViewPack         AccessAction = "view_pack"
	ActionDownloadDocument AccessAction = "download_document"
)

// AccessLogEntry is an append-only record of one disclosure read.
type AccessLogEntry struct {
	ID          id.AccessLogID `json:"id"`
	TokenDigest string         `json:"token_digest"`
	ProofPackID id.PackID      `json:"proof_pack_id"`
	UserID      id.UserID      `json:"user_id"`
	DocumentID  *id.DocumentID `json:"document_id,omitempty"`
	Action      AccessAction   `json:"action"`
	Timestamp   time.Time      `json:"timestamp"`
	ClientIP    string         `json:"client_ip,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	Device      string         `json:"device,omitempty"`
}

// NDAStatus is the caller's standing against a grant's NDA.
type NDAStatus struct {
	Accepted   bool `json:"accepted"`
	NDAVersion int  `json:"ndaVersion"`
}

// DownloadHandle is a short-lived link to one document.
type DownloadHandle struct {
	DocumentID id.DocumentID `json:"documentId"`
	FileName   string        `json:"fileName"`
	URL        string        `json:"url"`
	ExpiresAt  time.Time     `json:"expiresAt"`
}

// CreatedGrant carries the raw token back to the owner exactly once.
type CreatedGrant struct {
	Token string      `json:"token"`
	Grant *ShareGrant `json:"grant"`
}
