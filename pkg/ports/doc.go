/*
Package ports defines the driven ports (interfaces) of the dfacheck engine.

These interfaces decouple the checker from concrete backends.

# Key Interfaces

  - VerdictCache: memoizes answers to (description, mode, word) queries,
    backed by memory or Redis.
*/
package ports
