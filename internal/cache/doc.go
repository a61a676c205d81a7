// Package cache implements the shared object-cache layer.
//
// One shared bare repository is kept per hosting domain under the cache
// root, addressed by the cache key "@<domain>". Inside a shared cache, each
// distinct project from that domain is registered as a named remote with a
// no-tags fetch policy. Working copies participate in caching in two ways:
//
//   - At clone time, via git's --reference mechanism pointing at the shared
//     cache.
//   - Retroactively, via an "alternates" line appended to the working copy's
//     objects/info/alternates file (see [Attach] and [Detach]).
//
// # Working-Copy Metadata
//
// Participating working copies carry three keys in their local git config:
//
//	gitcache.project   project name (also the remote name inside the cache)
//	gitcache.repo      cache key, "@<domain>"
//	gitcache.dir       absolute path of the shared cache directory
//
// A working copy is considered cached iff gitcache.dir is set. All three are
// removed on detach.
//
// # Failure Handling
//
// Cache creation is all-or-nothing: if anything fails while a shared cache
// directory is being created and bootstrapped for the first time, the
// directory is removed entirely so a later run never observes a
// half-initialized cache. Temporary bootstrap clones live in self-cleaning
// temp directories that are removed on exit, success or failure.
//
// # Concurrency
//
// No locking is performed. At most one gitcache invocation is assumed to
// operate on a given shared cache at a time; concurrent invocations against
// the same domain can race.
package cache
