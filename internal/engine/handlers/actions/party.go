package actions

import (
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
)

func HandleCreateParty(ctx handlers.Context, p api.CreatePartyPayload) (handlers.Result, error) {
	party, err := ctx.Lobby.CreateParty(ctx.Actor, p.Name)
	if err != nil {
		return handlers.EmptyResult(), handlers.PartyError(err)
	}
	return handlers.Reply(api.MsgPartyCreated, ctx.ReqID, party), nil
}

func HandleJoinParty(ctx handlers.Context, p api.JoinPartyPayload) (handlers.Result, error) {
	party, err := ctx.Lobby.JoinParty(ctx.Actor, p.PartyID, p.PlayerName)
	if err != nil {
		return handlers.EmptyResult(), handlers.PartyError(err)
	}
	return handlers.Reply(api.MsgPartyJoined, ctx.ReqID, party), nil
}

func HandleLeaveParty(ctx handlers.Context) (handlers.Result, error) {
	ctx.Lobby.LeaveParty(ctx.Actor)
	return handlers.EmptyResult(), nil
}

func HandleRequestPartyList(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Reply(api.MsgPartyList, ctx.ReqID, ctx.Lobby.PartyList()), nil
}

// HandleMemberDetails - RPC: ответ идёт с тем же reqId
func HandleMemberDetails(ctx handlers.Context, ids api.MemberIDs) (handlers.Result, error) {
	return handlers.Reply(api.MsgPartyMemberDetails, ctx.ReqID, ctx.Lobby.MemberDetails(ids)), nil
}
