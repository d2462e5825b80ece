package megahash

import logging "github.com/ipfs/go-log/v2"

// log is megahash's named logger, mirroring store/store.go's
// `var log = logging.Logger("storethehash")`. Only construction, clear,
// and failed-store events are logged, at Debugw; reindexes are not logged.
// Fetch and the success path of Store never touch the logger.
var log = logging.Logger("megahash")
