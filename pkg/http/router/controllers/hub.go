package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/TourPlanner/pkg/concurrent"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
)

// User. one websocket client, every text frame it sends is a tourRequest.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*tourRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &tourRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// SolveTour. reads one request frame and writes back the tour or an error envelope. only transport
// errors are returned; the caller drops the connection on them.
func (u *User) SolveTour(ctx context.Context) error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateRequest(req); err != nil {
		return u.write(newErrorEnvelope(http.StatusBadRequest, err.Error()))
	}

	tour, err := u.hub.tourService.SolveTour(ctx, req.StartID, req.PointIDs)
	if err != nil {
		return u.write(newErrorEnvelope(wsStatusCode(err), err.Error()))
	}

	return u.write(envelope{"data": NewTourResponse(tour)})
}

func wsStatusCode(err error) int {
	var ierr *util.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case util.ErrNotFound:
		return http.StatusNotFound
	case util.ErrBadParamInput:
		return http.StatusBadRequest
	case util.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu          sync.RWMutex
	seq         uint
	us          []*User
	ns          map[uint]*User
	tourService TourService

	pool *concurrent.Pool
}

func NewHub(pool *concurrent.Pool, tourService TourService) *Hub {
	return &Hub{
		pool:        pool,
		ns:          make(map[uint]*User),
		us:          make([]*User, 0),
		tourService: tourService,
	}
}

func (h *Hub) Register(conn io.ReadWriteCloser) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(user)
}

func (h *Hub) remove(user *User) {
	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)

	// us is sorted by id, ids are assigned in increasing order
	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.us)
}

// RemoveAllUser. closes and forgets every registered connection.
func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for len(h.us) > 0 {
		user := h.us[0]
		user.conn.Close()
		h.remove(user)
	}
}

func (h *Hub) Schedule(task func()) {
	h.pool.Schedule(task)
}
