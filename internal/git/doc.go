// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather
// than using Go git libraries. This approach is simpler, more reliable, and
// ensures compatibility with user configurations (SSH keys, credential
// helpers, aliases).
//
// # Shared Cache Operations
//
// Operations against the shared bare repositories:
//
//   - [InitBare], [CloneBare]: Create bare repositories
//   - [Remotes], [AddRemote], [SetRemoteURL], [DisableRemoteTags]: Remote
//     bookkeeping, one remote per cached project
//   - [Fetch], [GCAuto]: Refresh and compact a cache
//
// # Working Copy Operations
//
// Queries and mutations against a participating working copy:
//
//   - [GetOriginURL], [GitDir]: Repository discovery
//   - [ConfigGet], [ConfigSet], [ConfigUnset]: Local configuration keys
//   - [GC], [RepackAll]: Object store maintenance around attach/detach
package git
