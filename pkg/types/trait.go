package types

import (
	"fmt"
	"sort"
)

// Trait is a single key/value observation unit, the atom of both profiles
// and contexts. Two traits are equal when both key and value are equal.
type Trait struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// NewTrait returns the trait key=value.
func NewTrait(key, value string) Trait {
	return Trait{Key: key, Value: value}
}

// String renders the trait as key:value.
func (t Trait) String() string {
	return fmt.Sprintf("%s:%s", t.Key, t.Value)
}

// TraitSet is an immutable, order-irrelevant set of traits.
// The zero value is an empty set.
type TraitSet struct {
	members map[Trait]struct{}
}

// NewTraitSet builds a set from traits; equal traits collapse into one member.
func NewTraitSet(traits ...Trait) TraitSet {
	members := make(map[Trait]struct{}, len(traits))
	for _, t := range traits {
		members[t] = struct{}{}
	}
	return TraitSet{members: members}
}

// Contains reports whether t is a member of the set.
func (s TraitSet) Contains(t Trait) bool {
	_, ok := s.members[t]
	return ok
}

// Len returns the number of distinct traits.
func (s TraitSet) Len() int {
	return len(s.members)
}

// HasKey reports whether any member carries key, whatever its value.
func (s TraitSet) HasKey(key string) bool {
	for t := range s.members {
		if t.Key == key {
			return true
		}
	}
	return false
}

// Traits returns the members sorted by key then value.
// The returned slice is a copy and may be modified by the caller.
func (s TraitSet) Traits() []Trait {
	out := make([]Trait, 0, len(s.members))
	for t := range s.members {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Keys returns the distinct keys of the set in sorted order.
func (s TraitSet) Keys() []string {
	seen := make(map[string]struct{}, len(s.members))
	keys := make([]string, 0, len(s.members))
	for t := range s.members {
		if _, ok := seen[t.Key]; ok {
			continue
		}
		seen[t.Key] = struct{}{}
		keys = append(keys, t.Key)
	}
	sort.Strings(keys)
	return keys
}

// Each calls fn for every member in unspecified order.
func (s TraitSet) Each(fn func(Trait)) {
	for t := range s.members {
		fn(t)
	}
}

// Profile is the set of traits an agent believes characterize an entity or
// situation. Profiles are owned by the agent's memory and read-only here.
type Profile struct {
	Name string
	TraitSet
}

// NewProfile builds a named profile.
func NewProfile(name string, traits ...Trait) Profile {
	return Profile{Name: name, TraitSet: NewTraitSet(traits...)}
}

// AsContext returns a context carrying exactly the profile's traits.
func (p Profile) AsContext() Context {
	return Context{Name: p.Name, TraitSet: p.TraitSet}
}

// Context describes a current, possibly partial, observed situation.
type Context struct {
	Name string
	TraitSet
}

// NewContext builds a named context.
func NewContext(name string, traits ...Trait) Context {
	return Context{Name: name, TraitSet: NewTraitSet(traits...)}
}
