// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flags
// snapshot.go
// 注册表快照与恢复。快照抓取两层状态：
//   - 注册表结构（标志集合、注册顺序、短名映射、模块分组、key flags、
//     多标志校验器列表、parsed 位）；
//   - 每个标志的内部状态（值、present 计数、默认态、默认值、单标志校验器）。
// Restore 把两层全部回卷：快照后新定义的标志被摘除，快照后追加的
// 校验器被丢弃，值与计数逐标志复位。testing/flagsaver 建立在这个原语上。

package flags

import "github.com/maxiaolu1981/cretem/flagcore/util/sets"

// Snapshot 注册表某一时刻的完整状态，由 SaveFlagValues 产出。
// 可多次 Restore，每次都回到同一时刻。
type Snapshot struct {
	r *Registry

	flags         map[string]Flag
	order         []string
	shortNames    map[string]string
	flagsByModule map[string][]string
	keyFlags      map[string]sets.String
	validators    []multiValidator
	parsed        bool

	flagUndos []func()
}

// SaveFlagValues 抓取整个注册表的状态快照
func (r *Registry) SaveFlagValues() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := &Snapshot{
		r:             r,
		flags:         make(map[string]Flag, len(r.flags)),
		order:         append([]string(nil), r.order...),
		shortNames:    make(map[string]string, len(r.shortNames)),
		flagsByModule: make(map[string][]string, len(r.flagsByModule)),
		keyFlags:      make(map[string]sets.String, len(r.keyFlags)),
		validators:    append([]multiValidator(nil), r.validators...),
		parsed:        r.parsed,
	}
	for name, f := range r.flags {
		s.flags[name] = f
		s.flagUndos = append(s.flagUndos, f.captureState())
	}
	for short, canonical := range r.shortNames {
		s.shortNames[short] = canonical
	}
	for m, names := range r.flagsByModule {
		s.flagsByModule[m] = append([]string(nil), names...)
	}
	for m, kf := range r.keyFlags {
		s.keyFlags[m] = sets.NewString(kf.UnsortedList()...)
	}
	return s
}

// Restore 把注册表回卷到快照时刻。快照之后定义的标志消失，
// 之后注册的校验器消失，每个存活标志的值与计数复位。
func (s *Snapshot) Restore() {
	r := s.r
	r.mu.Lock()

	r.flags = make(map[string]Flag, len(s.flags))
	for name, f := range s.flags {
		r.flags[name] = f
	}
	r.order = append([]string(nil), s.order...)
	r.shortNames = make(map[string]string, len(s.shortNames))
	for short, canonical := range s.shortNames {
		r.shortNames[short] = canonical
	}
	r.flagsByModule = make(map[string][]string, len(s.flagsByModule))
	for m, names := range s.flagsByModule {
		r.flagsByModule[m] = append([]string(nil), names...)
	}
	r.keyFlags = make(map[string]sets.String, len(s.keyFlags))
	for m, kf := range s.keyFlags {
		r.keyFlags[m] = sets.NewString(kf.UnsortedList()...)
	}
	r.validators = append([]multiValidator(nil), s.validators...)
	r.parsed = s.parsed
	r.mu.Unlock()

	for _, undo := range s.flagUndos {
		undo()
	}
}

// RestoreFlagValues 恢复快照，等价于 s.Restore()，保留对称命名
func (r *Registry) RestoreFlagValues(s *Snapshot) {
	s.Restore()
}

// SaveFlags 抓取指定标志（缺省为全部）的状态，返回恢复函数。
// 与 SaveFlagValues 不同，SaveFlags 只回卷标志内部状态，
// 不触碰注册表结构（快照后新定义的标志保留）。
func (r *Registry) SaveFlags(names ...string) (restore func(), err error) {
	r.mu.RLock()
	if len(names) == 0 {
		names = append([]string(nil), r.order...)
	}
	undos := make([]func(), 0, len(names))
	for _, name := range names {
		f, lerr := r.lookupLocked(name)
		if lerr != nil {
			r.mu.RUnlock()
			return nil, lerr
		}
		undos = append(undos, f.captureState())
	}
	r.mu.RUnlock()

	return func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}, nil
}
