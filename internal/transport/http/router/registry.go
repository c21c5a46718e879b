package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// Module mounts its routes on the public /api group and on the group
// guarded by the JWT middleware.
type Module interface {
	MountAPI(public, authed *gin.RouterGroup)
}

// Modules implementing prioritizer mount in ascending order; the rest
// default to 100.
type prioritizer interface{ Priority() int }

// Registry is an ordered set of modules for one engine.
type Registry struct {
	mods []Module
}

func NewRegistry(mods ...Module) *Registry {
	r := &Registry{}
	r.Register(mods...)
	return r
}

func (r *Registry) Register(mods ...Module) {
	for _, m := range mods {
		if m != nil {
			r.mods = append(r.mods, m)
		}
	}
}

// MountAll mounts every registered module; modules are sorted stably so
// equal priorities keep registration order.
func (r *Registry) MountAll(public, authed *gin.RouterGroup) {
	mods := append([]Module(nil), r.mods...)
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(public, authed)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
