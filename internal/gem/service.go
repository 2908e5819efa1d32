package gem

import (
	"context"

	"backend-geogems/internal/city"
	"backend-geogems/internal/db"

	"github.com/google/uuid"
)

const globalTopLimit = 10

type Service struct {
	db     db.Querier
	cities *city.Repository
}

func NewService(db db.Querier) *Service {
	return &Service{db: db, cities: city.NewRepository(db)}
}

// CreateGem assigns the gem to the nearest known city and persists it
// together with its media in one transaction. The city set is read in full
// on every call, never cached.
func (s *Service) CreateGem(ctx context.Context, input CreateGemInput) (Gem, error) {
	cities, err := s.cities.All(ctx)
	if err != nil {
		return Gem{}, err
	}
	assigned, err := city.Nearest(input.Location.Latitude, input.Location.Longitude, cities)
	if err != nil {
		return Gem{}, err
	}

	g := Gem{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Lat:         input.Location.Latitude,
		Lng:         input.Location.Longitude,
		AuthorID:    input.UserID,
		CityCode:    assigned.Code,
		Media:       []Media{},
		Votes:       []Vote{},
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Gem{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO gems (id, title, description, type, location, author_id, city_code)
		VALUES ($1,$2,$3,$4, ST_SetSRID(ST_MakePoint($5,$6), 4326)::geography, $7, $8)
		RETURNING created_at
	`, g.ID, g.Title, g.Description, g.Type, g.Lng, g.Lat, g.AuthorID, g.CityCode)
	if err := row.Scan(&g.CreatedAt); err != nil {
		return Gem{}, err
	}

	for _, m := range input.Media {
		media := Media{
			ID:    uuid.NewString(),
			GemID: g.ID,
			URI:   m.URI,
			Type:  m.Type,
		}
		row := tx.QueryRow(ctx, `
			INSERT INTO gem_media (id, gem_id, uri, type)
			VALUES ($1,$2,$3,$4)
			RETURNING created_at
		`, media.ID, media.GemID, media.URI, media.Type)
		if err := row.Scan(&media.CreatedAt); err != nil {
			return Gem{}, err
		}
		g.Media = append(g.Media, media)
	}

	if err := tx.Commit(ctx); err != nil {
		return Gem{}, err
	}
	return g, nil
}

// CastVote records a vote unconditionally. Aggregates are never maintained
// here; ReviewDetails are recomputed from the full vote set on every read.
func (s *Service) CastVote(ctx context.Context, gemID, userID string, voteType VoteType) (Vote, error) {
	vote := Vote{
		ID:     uuid.NewString(),
		GemID:  gemID,
		UserID: userID,
		Type:   voteType,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO gem_votes (id, gem_id, user_id, type)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, vote.ID, vote.GemID, vote.UserID, vote.Type)
	if err := row.Scan(&vote.CreatedAt); err != nil {
		return Vote{}, err
	}
	return vote, nil
}

// UserFeed returns the gems authored by userID and, when includeMined is
// set, the gems the user has voted on. A gem present in both sets appears
// once, at its authored position. The feed is not sorted.
func (s *Service) UserFeed(ctx context.Context, userID string, includeMined bool) ([]GemView, error) {
	authored, err := s.fetchGems(ctx, `WHERE g.author_id=$1`, userID)
	if err != nil {
		return nil, err
	}
	gems := authored

	if includeMined {
		voted, err := s.fetchGems(ctx, `WHERE g.id IN (SELECT gem_id FROM gem_votes WHERE user_id=$1)`, userID)
		if err != nil {
			return nil, err
		}
		gems = mergeByID(authored, voted)
	}
	return Project(gems), nil
}

// CityFeed returns the gems of one city, or of the whole system for the
// GLOBAL sentinel code. With top set the result is ranked descending by
// upvote count; only the GLOBAL feed is truncated to the top 10.
func (s *Service) CityFeed(ctx context.Context, cityCode string, top bool) ([]GemView, error) {
	if cityCode == city.GlobalCode {
		gems, err := s.fetchGems(ctx, ``)
		if err != nil {
			return nil, err
		}
		if top {
			gems = rankByUpvotes(gems, globalTopLimit)
		}
		return Project(gems), nil
	}

	resolved, err := s.cities.ByCode(ctx, cityCode)
	if err != nil {
		return nil, err
	}
	gems, err := s.fetchGems(ctx, `WHERE g.city_code=$1`, resolved.Code)
	if err != nil {
		return nil, err
	}
	if top {
		gems = rankByUpvotes(gems, 0)
	}
	return Project(gems), nil
}

func (s *Service) fetchGems(ctx context.Context, where string, args ...any) ([]Gem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id, g.title, g.description, g.type,
		       ST_Y(g.location::geometry), ST_X(g.location::geometry),
		       g.author_id, g.city_code, u.username, COALESCE(u.profile_picture_url,''), g.created_at
		FROM gems g
		JOIN users u ON u.id = g.author_id
		`+where+`
		ORDER BY g.created_at DESC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gems []Gem
	var ids []string
	for rows.Next() {
		var g Gem
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Type, &g.Lat, &g.Lng,
			&g.AuthorID, &g.CityCode, &g.Author.Username, &g.Author.ProfilePicture, &g.CreatedAt); err != nil {
			return nil, err
		}
		g.Media = []Media{}
		g.Votes = []Vote{}
		ids = append(ids, g.ID)
		gems = append(gems, g)
	}

	media, err := s.loadMedia(ctx, ids)
	if err != nil {
		return nil, err
	}
	votes, err := s.loadVotes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range gems {
		if m := media[gems[i].ID]; m != nil {
			gems[i].Media = m
		}
		if v := votes[gems[i].ID]; v != nil {
			gems[i].Votes = v
		}
	}
	return gems, nil
}

func (s *Service) loadMedia(ctx context.Context, gemIDs []string) (map[string][]Media, error) {
	media := map[string][]Media{}
	if len(gemIDs) == 0 {
		return media, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, gem_id, uri, type, created_at
		FROM gem_media WHERE gem_id = ANY($1)
		ORDER BY created_at
	`, gemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.GemID, &m.URI, &m.Type, &m.CreatedAt); err != nil {
			return nil, err
		}
		media[m.GemID] = append(media[m.GemID], m)
	}
	return media, nil
}

func (s *Service) loadVotes(ctx context.Context, gemIDs []string) (map[string][]Vote, error) {
	votes := map[string][]Vote{}
	if len(gemIDs) == 0 {
		return votes, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, gem_id, user_id, type, created_at
		FROM gem_votes WHERE gem_id = ANY($1)
		ORDER BY created_at
	`, gemIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var v Vote
		if err := rows.Scan(&v.ID, &v.GemID, &v.UserID, &v.Type, &v.CreatedAt); err != nil {
			return nil, err
		}
		votes[v.GemID] = append(votes[v.GemID], v)
	}
	return votes, nil
}
