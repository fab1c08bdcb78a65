// Package bot holds the domain vocabulary shared by every transport and by the
// panel: the mirrored BotState, the event names exchanged with the backend,
// their payloads, the REST response envelope and the user-facing error
// taxonomy.
package bot
