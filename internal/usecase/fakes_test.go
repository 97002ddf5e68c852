package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mapmark/pinpoint/internal/domain/contract"
	"github.com/mapmark/pinpoint/internal/domain/entity"
	usecasecontract "github.com/mapmark/pinpoint/internal/usecase/contract"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

type fakeConfig struct {
	usecasecontract.IConfigProvider
}

func (fakeConfig) GetMaxPageSize() int { return 100 }

type seqUUID struct {
	mu sync.Mutex
	n  int
}

func (g *seqUUID) NewUUID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- users ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) CreateUser(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, entity.ErrNotFound
}

func (r *memUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memUserRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetProfilesByIDs(_ context.Context, ids []string) ([]entity.PublicProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.PublicProfile
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u.Profile())
		}
	}
	return out, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id string, updates map[string]interface{}) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "bio":
			u.Bio = v.(string)
		case "country":
			u.Country = v.(string)
		case "city":
			u.City = v.(string)
		case "is_active":
			u.IsActive = v.(bool)
		}
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) SetLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

func (r *memUserRepo) SetOnlineStatus(_ context.Context, id string, online bool, lastSeen time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return entity.ErrNotFound
	}
	u.IsOnline = online
	u.LastSeen = &lastSeen
	return nil
}

func (r *memUserRepo) Follow(_ context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[followerID].Following = addUnique(r.users[followerID].Following, followeeID)
	r.users[followeeID].Followers = addUnique(r.users[followeeID].Followers, followerID)
	return nil
}

func (r *memUserRepo) Unfollow(_ context.Context, followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[followerID]; ok {
		u.Following = without(u.Following, followeeID)
	}
	if u, ok := r.users[followeeID]; ok {
		u.Followers = without(u.Followers, followerID)
	}
	return nil
}

func (r *memUserRepo) SearchUsers(_ context.Context, query, excludeID string, limit int) ([]entity.PublicProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []entity.PublicProfile
	for _, u := range r.users {
		if u.ID == excludeID || !u.IsActive {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u.Profile())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func addUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func without(list []string, v string) []string {
	out := list[:0]
	for _, x := range list {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// --- conversations and messages ---

type memConversationRepo struct {
	mu    sync.Mutex
	convs map[string]*entity.Conversation
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{convs: map[string]*entity.Conversation{}}
}

func (r *memConversationRepo) FindOrCreate(_ context.Context, c *entity.Conversation) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.convs {
		if existing.PairKey == c.PairKey {
			cp := *existing
			return &cp, nil
		}
	}
	r.convs[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *memConversationRepo) GetByID(_ context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *c
	cp.UnreadCount = map[string]int{}
	for k, v := range c.UnreadCount {
		cp.UnreadCount[k] = v
	}
	return &cp, nil
}

func (r *memConversationRepo) ListByParticipant(_ context.Context, userID string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Conversation
	for _, c := range r.convs {
		if c.HasParticipant(userID) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	return out, nil
}

func (r *memConversationRepo) RecordMessage(_ context.Context, conversationID, messageID, senderID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[conversationID]
	if !ok {
		return entity.ErrNotFound
	}
	id := messageID
	c.LastMessageID = &id
	c.LastActivity = at
	for _, p := range c.Participants {
		if p != senderID {
			c.UnreadCount[p]++
		}
	}
	return nil
}

func (r *memConversationRepo) ResetUnread(_ context.Context, conversationID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.convs[conversationID]; ok {
		c.UnreadCount[userID] = 0
	}
	return nil
}

func (r *memConversationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.convs, id)
	return nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	messages []*entity.Message
}

func (r *memMessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

func (r *memMessageRepo) GetByID(_ context.Context, id string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memMessageRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, id := range ids {
		if m, err := r.GetByID(ctx, id); err == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) ListVisible(_ context.Context, conversationID string, p contract.Pagination) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var visible []*entity.Message
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		if m.ConversationID == conversationID && !m.IsDeleted {
			visible = append(visible, m)
		}
	}
	total := int64(len(visible))
	start := int(p.Skip())
	if start > len(visible) {
		start = len(visible)
	}
	end := start + p.PageSize
	if end > len(visible) {
		end = len(visible)
	}
	return append([]*entity.Message(nil), visible[start:end]...), total, nil
}

func (r *memMessageRepo) MarkRead(_ context.Context, conversationID, userID string, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, m := range r.messages {
		if m.ConversationID == conversationID && m.SenderID != userID && !m.ReadByUser(userID) {
			m.ReadBy = append(m.ReadBy, entity.ReadReceipt{UserID: userID, ReadAt: at})
			m.Status = entity.MessageStatusRead
			n++
		}
	}
	return n, nil
}

func (r *memMessageRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if m.ID == id {
			m.IsDeleted = true
			return nil
		}
	}
	return entity.ErrNotFound
}

func (r *memMessageRepo) DeleteByConversation(_ context.Context, conversationID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	var n int64
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return n, nil
}

// --- reviews and photos ---

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[string]*entity.Review{}}
}

func (r *memReviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews[review.ID] = review
	return nil
}

func (r *memReviewRepo) GetByID(_ context.Context, id string) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rv, ok := r.reviews[id]; ok {
		cp := *rv
		return &cp, nil
	}
	return nil, entity.ErrNotFound
}

// FindWithinRadius uses the same spherical distance the geo index applies.
func (r *memReviewRepo) FindWithinRadius(_ context.Context, q entity.RadiusQuery) ([]*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.reviews {
		if q.DistanceTo(rv.Lat, rv.Lng) <= q.RadiusMeters {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *memReviewRepo) ListByUsername(_ context.Context, username string, p contract.Pagination) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Review
	for _, rv := range r.reviews {
		if rv.Username == username {
			out = append(out, rv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.reviews, id)
	return nil
}

type memPhotoStore struct {
	mu       sync.Mutex
	photos   map[string]*entity.Photo
	failPuts int
	puts     int
}

func newMemPhotoStore() *memPhotoStore {
	return &memPhotoStore{photos: map[string]*entity.Photo{}}
}

func (s *memPhotoStore) Put(_ context.Context, p *entity.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failPuts > 0 && s.puts >= s.failPuts {
		return entity.ErrUnavailable
	}
	s.photos[p.ID] = p
	return nil
}

func (s *memPhotoStore) Get(_ context.Context, id string) (*entity.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.photos[id]; ok {
		return p, nil
	}
	return nil, entity.ErrNotFound
}

func (s *memPhotoStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.photos, id)
	return nil
}

type memNearbyCache struct {
	mu          sync.Mutex
	entries     map[entity.RadiusQuery]*contract.CachedReviews
	invalidated int
}

func newMemNearbyCache() *memNearbyCache {
	return &memNearbyCache{entries: map[entity.RadiusQuery]*contract.CachedReviews{}}
}

func (c *memNearbyCache) GetNearby(_ context.Context, q entity.RadiusQuery) (*contract.CachedReviews, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hit, ok := c.entries[q]
	return hit, ok, nil
}

func (c *memNearbyCache) SetNearby(_ context.Context, q entity.RadiusQuery, reviews []*entity.Review) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached := &contract.CachedReviews{}
	for _, r := range reviews {
		cached.Reviews = append(cached.Reviews, *r)
	}
	c.entries[q] = cached
	return nil
}

func (c *memNearbyCache) InvalidateNearby(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[entity.RadiusQuery]*contract.CachedReviews{}
	c.invalidated++
	return nil
}

// --- ads and posts ---

type memAdRepo struct {
	mu  sync.Mutex
	ads map[string]*entity.Ad
}

func newMemAdRepo() *memAdRepo {
	return &memAdRepo{ads: map[string]*entity.Ad{}}
}

func (r *memAdRepo) Create(_ context.Context, ad *entity.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ad
	r.ads[ad.ID] = &cp
	return nil
}

func (r *memAdRepo) GetByID(_ context.Context, id string) (*entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ad, ok := r.ads[id]; ok {
		cp := *ad
		return &cp, nil
	}
	return nil, entity.ErrNotFound
}

func (r *memAdRepo) IncrementViews(_ context.Context, id string) (*entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ad, ok := r.ads[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	ad.Views++
	cp := *ad
	return &cp, nil
}

func (r *memAdRepo) Update(_ context.Context, ad *entity.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ads[ad.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *ad
	r.ads[ad.ID] = &cp
	return nil
}

func (r *memAdRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ads, id)
	return nil
}

func (r *memAdRepo) List(_ context.Context, f entity.AdFilter) ([]*entity.Ad, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Ad
	for _, ad := range r.ads {
		if f.Status != "" && ad.Status != f.Status {
			continue
		}
		if f.Category != "" && ad.Category != f.Category {
			continue
		}
		if f.Near != nil && (ad.Lat == nil || f.Near.DistanceTo(*ad.Lat, *ad.Lng) > f.Near.RadiusMeters) {
			continue
		}
		cp := *ad
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]*entity.Post
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[string]*entity.Post{}}
}

func (r *memPostRepo) live(id string) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok || p.IsDeleted {
		return nil, entity.ErrNotFound
	}
	return p, nil
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = p
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.live(id)
	if err != nil {
		return nil, err
	}
	cp := *p
	cp.Reactions = append([]entity.Reaction(nil), p.Reactions...)
	return &cp, nil
}

func (r *memPostRepo) List(_ context.Context, f entity.PostFilter) ([]*entity.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Post
	for _, p := range r.posts {
		if p.IsDeleted || (f.AuthorID != "" && p.AuthorID != f.AuthorID) {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *memPostRepo) SetReaction(_ context.Context, postID string, reaction entity.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.live(postID)
	if err != nil {
		return err
	}
	kept := p.Reactions[:0]
	for _, x := range p.Reactions {
		if x.UserID != reaction.UserID {
			kept = append(kept, x)
		}
	}
	p.Reactions = append(kept, reaction)
	return nil
}

func (r *memPostRepo) RemoveReaction(_ context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.live(postID)
	if err != nil {
		return err
	}
	kept := p.Reactions[:0]
	for _, x := range p.Reactions {
		if x.UserID != userID {
			kept = append(kept, x)
		}
	}
	p.Reactions = kept
	return nil
}

func (r *memPostRepo) AddComment(_ context.Context, postID string, c entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.live(postID)
	if err != nil {
		return err
	}
	p.Comments = append(p.Comments, c)
	return nil
}

func (r *memPostRepo) AddReply(_ context.Context, postID, commentID string, reply entity.Reply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.live(postID)
	if err != nil {
		return err
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments[i].Replies = append(p.Comments[i].Replies, reply)
			return nil
		}
	}
	return entity.ErrNotFound
}

func (r *memPostRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, err := r.live(id)
	if err != nil {
		return err
	}
	p.IsDeleted = true
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}
