// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

package writemodel

// SetUUID stamps the store-assigned uuid onto a shape. The CRUD service
// calls it after a create, and with the path uuid on updates so clients
// cannot re-address an instance through the body.

func (entry *Simple) SetUUID(uuid string) { entry.UUID = uuid }

func (venue *Venue) SetUUID(uuid string) { venue.UUID = uuid }

func (material *Material) SetUUID(uuid string) { material.UUID = uuid }

func (production *Production) SetUUID(uuid string) { production.UUID = uuid }

func (ceremony *AwardCeremony) SetUUID(uuid string) { ceremony.UUID = uuid }
