// Package di provides a scope-based dependency injection container
// with decorating behaviors.
//
// Objects are described by definitions (Def) registered in a Builder.
// The Builder creates a Container in the widest scope. Narrower
// containers are created with SubContainer, typically one per request.
// An object is built the first time it is retrieved from the container
// of its scope and then reused, unless its definition is unshared.
//
// Behaviors decorate the definitions when they are added:
//
//   - OptInCaching reverses the default caching policy, so only the
//     definitions carrying the Cache marker are shared.
//   - GoroutineLocalizing gives every goroutine its own instance of
//     an object. In EnsureLocality mode the container holds a single
//     shared Placeholder whose operations always resolve and forward
//     to the calling goroutine's instance, even when the placeholder
//     was stored inside another long-lived object by a different
//     goroutine.
//
// A Monitor can be attached to the Builder to observe the wrapping
// decisions, and the manifest subpackage can assemble a Builder from
// a declarative configuration file.
package di
