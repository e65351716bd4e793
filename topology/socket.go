// File: topology/socket.go
// Author: momentics <momentics@gmail.com>

package topology

// SocketInfo describes one physical CPU package and its cores. SocketID
// is dense and starts at zero.
type SocketInfo struct {
	SocketID int
	Cores    []CoreInfo
	L3       *CacheInfo
}
