package delegate

import "context"

// doneCtx is used to Await a child sink that Feed has already observed as
// Done: the sink is guaranteed closed by the time it's passed here, so the
// context never actually has a chance to matter, but Await needs one.
var doneCtx = context.Background()
