package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"robotdan_backend/internals/features/membership/form/model"
)

/* =========================================================
   SessionStore — 신청 세션 인메모리 저장소
   제출 완료 또는 TTL 만료 시 세션을 버린다 (영속화 없음).
   ========================================================= */

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*model.FormSession
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]*model.FormSession),
		ttl:      ttl,
	}
}

func (s *SessionStore) Create() *model.FormSession {
	sess := model.NewFormSession()
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) Get(id uuid.UUID) (*model.FormSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StartReaper — 만료 세션 청소 루프 (ctx 취소 시 종료)
func (s *SessionStore) StartReaper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.ReapExpired(time.Now()); n > 0 {
					log.Printf("🧹 만료 세션 %d건 정리", n)
				}
			}
		}
	}()
}

// ReapExpired — 마지막 활동 후 TTL 이 지난 세션 제거, 제거 개수 반환
func (s *SessionStore) ReapExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		sess.Lock()
		expired := now.Sub(sess.TouchedAt) > s.ttl && !sess.Composing()
		sess.Unlock()
		if expired {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
